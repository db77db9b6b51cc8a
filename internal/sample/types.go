package sample

// #region sample
// Sample is one input row of raw observables from an energy-confinement
// process, in time order. TauE is informational only and is not used by any
// downstream stage.
type Sample struct {
	Time      float64 `json:"time"`
	H98Y2     float64 `json:"H98y2"`
	PRad      float64 `json:"P_rad"`
	PInput    float64 `json:"P_input"`
	FELM      float64 `json:"f_ELM"`
	DeltaWELM float64 `json:"DeltaW_ELM"`
	TauE      float64 `json:"tau_E,omitempty"`
}

// #endregion sample

// #region batch
// Batch is an ordered, time-ascending sequence of samples. The ordering is
// taken from the caller as-is; rows are never re-sorted.
type Batch []Sample

// Len returns the number of rows in the batch.
func (b Batch) Len() int { return len(b) }

// Times returns the time column in row order.
func (b Batch) Times() []float64 {
	out := make([]float64, len(b))
	for i, s := range b {
		out[i] = s.Time
	}
	return out
}

// #endregion batch

// #region columns
// Columns maps a column name to its numeric sequence. This is the only input
// contract the diagnostic core places on the parsing layer.
type Columns map[string][]float64

// Required column names, case-sensitive. tau_E is optional.
var RequiredColumns = []string{"time", "H98y2", "P_rad", "P_input", "f_ELM", "DeltaW_ELM"}

// ColumnTauE is the optional informational column.
const ColumnTauE = "tau_E"

// #endregion columns
