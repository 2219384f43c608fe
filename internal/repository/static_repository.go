package repository

import "context"

// StaticSource returns the same message on every call.
type StaticSource struct {
	message string
}

func NewStaticSource(message string) *StaticSource {
	return &StaticSource{message: message}
}

func (repo *StaticSource) GetMessage(context.Context) (string, error) {
	return repo.message, nil
}
