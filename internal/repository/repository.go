// Package repository contiene las implementaciones Mongo de los stores.
package repository

import "errors"

// ErrNotFound se devuelve cuando el documento buscado no existe.
var ErrNotFound = errors.New("not found")
