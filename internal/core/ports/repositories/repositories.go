package repositories

// RepositoryProvider holds instances of all repositories used by the services.
type RepositoryProvider struct {
	UserRepo UserRepository
}
