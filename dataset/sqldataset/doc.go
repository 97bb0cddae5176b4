/*
Package sqldataset loads datasets from and stores examples in SQL database
tables.

A dataset is stored on a single table with a TEXT column per feature, named
after the feature, and a row per example holding the textual representation
of its values. SQLite3 (github.com/mattn/go-sqlite3) and PostgreSQL
(github.com/lib/pq) databases are supported.
*/
package sqldataset
