/*
# Module: storage/repository.go
Repository interfaces for the visit log persistence layer.

## Linked Modules
- [types/visit](../types/visit.go) - Visit log data structures

## Tags
storage, repository, interface, persistence

## Exports
VisitRepository

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "storage/repository.go" ;
    code:description "Repository interfaces for the visit log persistence layer" ;
    code:linksTo [
        code:name "types/visit" ;
        code:path "../types/visit.go" ;
        code:relationship "Visit log data structures"
    ] ;
    code:exports :VisitRepository ;
    code:tags "storage", "repository", "interface", "persistence" .
<!-- End LinkedDoc RDF -->
*/
package storage

import (
	"context"

	"location-stories/types"
)

// VisitRepository handles visit log persistence
type VisitRepository interface {
	Save(ctx context.Context, visit types.Visit) error
	GetRecent(ctx context.Context, limit int) ([]types.Visit, error)
}
