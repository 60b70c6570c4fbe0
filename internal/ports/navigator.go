package ports

// Navigator requests a move to another destination. Navigate must not block.
type Navigator interface {
	Navigate(dest string)
}
