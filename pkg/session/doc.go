/*
Package session manages the navigation sessions of many documents.

A Manager keeps one navigation.Coordinator per document ID, so roles and drag
sessions never leak between documents. Callers reach a coordinator through
View or Update, which serialise access per document with a reference-counted
mutex (and optionally a distributed lock shared with other replicas). Update
persists the document's navigation state through a ports.StateStore whenever
the preview location or the role table changed.
*/
package session
