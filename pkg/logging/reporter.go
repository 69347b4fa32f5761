/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter.go
Description: Converter reporter backed by the conversion log helpers. Registered by the
CLI so every finished or failed conversion produces one log line.
*/

package logging

import (
	"github.com/kleascm/xmlforge/pkg/core"
	"github.com/kleascm/xmlforge/pkg/interfaces"
	"github.com/sirupsen/logrus"
)

// ConversionReporter logs converter events through a Logger
type ConversionReporter struct {
	logger *Logger
}

// NewConversionReporter creates a new ConversionReporter
func NewConversionReporter(logger *Logger) *ConversionReporter {
	return &ConversionReporter{logger: logger}
}

// OnConversion logs a finished conversion
func (r *ConversionReporter) OnConversion(result *core.Result) {
	r.logger.LogConversion(result.ID, result.Format.String(), result.Nodes, result.Duration, logrus.Fields{
		"structure":  result.Structure.String(),
		"input_size": result.InputSize,
	})
}

// OnFailure logs a failed conversion with its error kind
func (r *ConversionReporter) OnFailure(id string, format interfaces.Format, err error) {
	r.logger.LogFailure(id, format.String(), interfaces.KindOf(err), err)
}

var _ core.Reporter = (*ConversionReporter)(nil)
