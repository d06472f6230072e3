// Package partner contains the DeliveryPartner aggregate.
//
// A delivery partner services a set of destination zip codes and carries a
// soft handling capacity. Only verified partners are eligible for shipment
// assignment; verification happens out of band and is recorded on the
// aggregate with Verify.
package partner
