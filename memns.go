// Package memns contains the core domain types shared by the in-memory
// namespace: node views, attribute flags, error taxonomy and the status
// translation used by filesystem-driver callback layers.
//
// The namespace itself lives in package namespace; descriptor suppliers for
// bootstrapping the root live in package security.
package memns
