// package models defines client-side mirrors of records owned by the Blossom backend.
//
// Nothing in this package is authoritative: every struct is a projection of a JSON
// response, replaced wholesale after each fetch or mutation. The only persisted types
// are the cache wrappers in persisted.go, which exist so the terminal client can
// render instantly before the next fetch lands.
package models
