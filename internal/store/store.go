package store

import (
	"gorm.io/gorm"
)

type Store interface {
	Mutation() Mutation
	Close() error
}

type DataStore struct {
	mutation Mutation
	db       *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		mutation: NewMutationStore(db),
		db:       db,
	}
}

func (s *DataStore) Mutation() Mutation {
	return s.mutation
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
