package quiz

import "errors"

// ErrDataUnavailable is returned when neither the dataset nor the static
// fallback question list can be found.
var ErrDataUnavailable = errors.New("quiz data unavailable")
