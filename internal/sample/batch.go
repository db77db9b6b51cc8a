package sample

import (
	"errors"
	"fmt"
	"strings"
)

// #region errors

// ErrInsufficientData is returned by stages that need at least two rows to
// form a normalization range or a slope.
var ErrInsufficientData = errors.New("batch must contain at least 2 samples")

// MissingColumnsError reports required columns absent from the input.
// The whole computation fails before any partial result is produced.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// #endregion errors

// #region from-columns

// FromColumns builds a Batch from a column-name to sequence mapping.
// Column names are matched exactly (case-sensitive). All present columns,
// including tau_E when supplied, must have the same length. Row order is
// preserved from the input sequences.
func FromColumns(cols Columns) (Batch, error) {
	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	n := len(cols["time"])
	for _, name := range RequiredColumns {
		if len(cols[name]) != n {
			return nil, fmt.Errorf("column %q has %d values, want %d", name, len(cols[name]), n)
		}
	}
	tau, hasTau := cols[ColumnTauE]
	if hasTau && len(tau) != n {
		return nil, fmt.Errorf("column %q has %d values, want %d", ColumnTauE, len(tau), n)
	}

	batch := make(Batch, n)
	for i := 0; i < n; i++ {
		batch[i] = Sample{
			Time:      cols["time"][i],
			H98Y2:     cols["H98y2"][i],
			PRad:      cols["P_rad"][i],
			PInput:    cols["P_input"][i],
			FELM:      cols["f_ELM"][i],
			DeltaWELM: cols["DeltaW_ELM"][i],
		}
		if hasTau {
			batch[i].TauE = tau[i]
		}
	}
	return batch, nil
}

// #endregion from-columns
