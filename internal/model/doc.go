// Package model holds the registry of article types and link types declared
// in a project's model file.
//
// Types and links live in two growable arenas and are referenced everywhere
// else by small integer handles (TypeID, LinkID). The registry is filled once
// by Load and is read-only afterwards.
package model
