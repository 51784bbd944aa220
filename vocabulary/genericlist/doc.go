// Package genericlist provides vocabulary predicates for generic list
// extraction entities published to the knowledge graph.
//
// A "generic list" is one configured extraction definition: a set of named
// output columns derived from per-patient graph paths, identified by
// study/event/form/item-group OIDs. This vocabulary covers the two entity
// kinds the extraction service publishes:
//   - form entities: the registered extraction definition itself
//   - run entities: one completed extraction over a snapshot
//
// # Semstreams Integration
//
// This package follows semstreams vocabulary patterns:
//   - Predicates use three-level dotted notation (domain.category.property)
//   - Predicates are registered in init() using vocabulary.Register()
//   - IRI mappings use vocabulary.WithIRI() for RDF export compatibility
//   - Metadata includes description and data type
//
// # Entity IDs
//
//	Form entities: protrait.local.list.form.{form_oid}
//	Run entities:  protrait.local.list.run.{uuid}
//
// # Usage
//
// Import the package to register predicates, then use predicate constants:
//
//	import (
//	    "github.com/ProTraitInfra/libre-clinica-upload/vocabulary/genericlist"
//	    "github.com/c360studio/semstreams/message"
//	)
//
//	func buildRunTriples(run Run) []message.Triple {
//	    return []message.Triple{
//	        {Subject: run.EntityID, Predicate: genericlist.RunRowCount, Object: len(run.Rows)},
//	        {Subject: run.EntityID, Predicate: genericlist.RunStatus, Object: string(genericlist.RunCompleted)},
//	    }
//	}
//
// Generic-list-specific predicates map into the PROTRAIT namespace:
// https://w3id.org/protrait/genericlist#
package genericlist
