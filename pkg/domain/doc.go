package domain

// domain package contains the Domain Models and Interfaces for the Khipu application.
//
// `domain/khipu` package exposes the root object for the Khipu application.
// Entrypoints of applications should instantiate the KhipuDatabase object and use it to reach the domain.
//
// `domain/ENTITY.go` has high-level entities (Domain Model types) and functions.
// For example, `domain/broker.go` contains the `Broker` entity.
//
// `domain/ENTITY` directory contains the "phisical" representation of the domain entities.
// For example, `domain/broker/db` holds the database expression of the broker entity
// described in `domain/broker.go`, and `domain/stream/kafka` holds the message broker
// expression of a record stream.
//
// `domain/ENTITY/db/interface.go` exposes the client interface to handle the domain entity in DB.
//
// # Entities
//
// Core entities in the domain are:
//
//   - Broker: a message broker endpoint where datasets stream from.
//   - Topic: a named channel on a broker, with an expected record schema.
//   - Dataset: a named collection of ML records; broker sourced ones link to a topic.
//   - MessageBinding: the dataset-broker-topic chain, resolved as one view.
