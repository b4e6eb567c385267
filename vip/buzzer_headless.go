//go:build headless

package vip

// NewToneBuzzer returns a silent Buzzer in headless builds.
func NewToneBuzzer() (Buzzer, error) {
	return NopBuzzer{}, nil
}
