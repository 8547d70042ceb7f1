// Package domain contains the core entities of the meeting document pipeline:
// the validated meeting metadata a run starts from, the documents it produces
// and the ResultSet that collects them. It is independent of any provider,
// storage or delivery mechanism.
package domain
