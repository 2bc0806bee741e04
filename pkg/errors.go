// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Sabit error değişkenleri errors.Is() ile karşılaştırılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Service katmanı bunları fmt.Errorf("%w: detay", ...) ile sarar,
// handler katmanı HTTP status code'larına map'ler.
package pkg

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
)
