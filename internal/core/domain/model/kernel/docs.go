// Package kernel contains shared value objects used across the shipping domain.
//
// The kernel provides the building blocks that every aggregate depends on:
//   - UUID: validated entity identifiers
//   - ZipCode: destination postal codes
//   - Weight: package weight with business limits
//   - Contact: client notification contact details
//
// All value objects are immutable and must be created through their
// constructor functions; zero values fail validation.
package kernel
