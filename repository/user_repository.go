package repository

import "github.com/Galaktikon/better-loanz-fintech-capstone/domain"

type UserRepository interface {
	Create(user domain.User) error
	Get(username string) (domain.User, bool)
}
