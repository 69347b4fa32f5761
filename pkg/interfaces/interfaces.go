/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces.go
Description: Shared contracts for xmlforge. Defines the ingestor capability and the
supported input formats used across packages to break import cycles.
*/

package interfaces

import (
	"github.com/kleascm/xmlforge/pkg/tree"
)

// Ingestor turns raw document bytes into the canonical document tree
type Ingestor interface {
	// Parse builds a tree from data. Errors wrap one of the error kinds in this package.
	Parse(data []byte) (*tree.Node, error)
	// Format returns the input format handled by this ingestor
	Format() Format
}
