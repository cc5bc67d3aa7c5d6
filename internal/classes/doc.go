// Package classes is the graph store of a compile run: every Class, every
// Article variant, and the typed links between classes.
//
// # Storage
//
// Classes and articles live in two append-only arenas and are referenced by
// integer handles (ClassID, ArticleID). Handles stay valid for the lifetime
// of the Store; there is no deletion. Two indexes map keys to handles.
//
// # Links
//
// Each class keeps two adjacency lists, LinksOut and LinksIn, made of one
// bucket per link type. InsertLink writes both sides in one critical
// section, so (T, A, B) is in A.LinksOut exactly when it is in B.LinksIn.
// Identical triples are not deduplicated: inserting one twice records it
// twice on both sides.
//
// # Duplicates
//
// Registering a class or article key that is already indexed logs a warning
// and keeps the first registration authoritative. The later node still
// exists in its arena (and a duplicate article still joins its class's
// variant list) but is not reachable by key.
package classes
