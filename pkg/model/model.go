package model

// All returns the mapped entities in creation order.
func All() []interface{} {
	return []interface{}{
		&Client{},
		&Project{},
		&User{},
	}
}
