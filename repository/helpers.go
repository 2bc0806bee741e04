package repository

import "strings"

// isUniqueViolation, SQLite UNIQUE constraint hatasını tanır.
// database/sql driver'dan typed error gelmez — mesaj kontrolü gerekir.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
