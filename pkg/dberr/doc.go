// Package dberr classifies datastore errors.
//
// gorm is opened with TranslateError, which turns PostgreSQL unique and
// foreign key violations into gorm.ErrDuplicatedKey and
// gorm.ErrForeignKeyViolated. The session keeps the driver's
// *pgconn.PgError wrapped next to the sentinel, so Classify understands
// both and Constraint can name the violated index.
package dberr
