// package models defines the data model for the label archive
package models

// Model defines the base interface for all persistent catalog records.
// Implementations include Album and Artist.
type Model interface {
	Key() string     // Key returns the unique slug for this record
	Validate() error // Validate checks if the record's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific record types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new record into the database
	Get(key string) (T, error)                 // Get retrieves a record by its slug
	Update(model T) error                      // Update modifies an existing record in the database
	Delete(key string) error                   // Delete removes a record from the database by its slug
	List(criteria map[string]any) ([]T, error) // List retrieves all records matching the given criteria
}
