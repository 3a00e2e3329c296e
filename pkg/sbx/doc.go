// Package sbx provides types, the query builder, and the find executor for
// working with the SBX Cloud API.
//
// # Overview
//
// The sbx package defines the wire types (FindRequest, FindResponse,
// WhereClause), the fluent FindQuery builder, the generic find functions,
// and the interfaces for the per-area clients (DataClient, AuthClient,
// FilesClient, and so on). A concrete implementation of those clients is
// provided by the sbxclient package, which wires configuration, transport,
// and authentication. Most consumers import sbxclient to construct a client
// and then work through the interfaces exposed here.
//
// # Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/sbxcloud/sbx-go/pkg/sbx"
//	  "github.com/sbxcloud/sbx-go/pkg/sbxclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := sbxclient.New(&sbx.Config{
//	    BaseURL: "https://sbxcloud.com",
//	    Domain:  96,
//	    AppKey:  "app-key",
//	    Token:   "token",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  query := sbx.NewFindQuery("product").
//	    AndWhereIsEqualTo("active", true).
//	    SetPageSize(100)
//
//	  page := sbx.Find[map[string]any](ctx, cli.Data(), query)
//	  if !page.Success { log.Fatal(page.ErrorMessage()) }
//	  _ = page.Results
//	}
//
// # Queries and pagination
//
// FindQuery expresses where conditions as ordered groups of comparisons,
// or as an explicit key list, plus paging and reference-fetch options.
// Find fetches one page; FindAll walks every page and merges the results.
// Neither returns a Go error: the response's Success flag (or its Err
// method) carries the outcome, whether the failure came from the transport
// or from the backend.
//
// # Typed rows
//
// Declare a struct embedding Record and implementing EntityModel to map a
// backend model, then use the generic find functions or a Repository for a
// conventional error-returning CRUD surface:
//
//	repo := sbx.NewRepository[Product](cli.Data())
//	product, err := repo.FindByKey(ctx, "a1b2c3")
package sbx
