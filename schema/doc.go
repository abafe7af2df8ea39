// Copyright 2018 Andrew Fort

// Package schema provides the bundled NoDL XML schemas and document
// validation against them.
//
// Two schemas exist. The interface schema checks only the document
// envelope: a root interface element, carrying whatever attributes
// and content its version defines. Each supported version then has
// its own schema describing the content of that version.
//
// Schemas are compiled on first use and shared for the life of the
// process. A compiled schema is safe for concurrent validation.
package schema
