// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the shipping system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - PartnerSelector: A domain service for choosing a delivery partner for a shipment
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
