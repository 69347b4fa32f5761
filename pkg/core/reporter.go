/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter.go
Description: Reporter interface for conversion telemetry. Lets the converter notify
listeners of finished and failed conversions.
*/

package core

import (
	"github.com/kleascm/xmlforge/pkg/interfaces"
)

// Reporter receives conversion events. Implementations must be safe for concurrent use.
type Reporter interface {
	// OnConversion is called after a conversion succeeds
	OnConversion(result *Result)
	// OnFailure is called when a conversion fails
	OnFailure(id string, format interfaces.Format, err error)
}
