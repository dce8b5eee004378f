package forecast

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	json "github.com/goccy/go-json"
)

// Model is a serializeable snapshot of a fitted Forecaster: enough to
// reconstruct what it decided without having to re-fit, and enough to
// render a human-readable summary. Encode and DecodeModel use goccy/go-json
// in place of encoding/json. Models are built by callers; the Auto-*
// selectors do not produce them.
type Model struct {
	Name         string            `json:"name"`
	TrainEndTime time.Time         `json:"train_end_time"`
	TrainLength  int               `json:"train_length"`
	AIC          float64           `json:"aic,omitempty"`
	Diagnostics  map[string]string `json:"diagnostics,omitempty"`
	Components   []ComponentWeight `json:"components,omitempty"`
}

// ComponentWeight names one additive piece of a decomposition-based model
// (a trend sub-learner, a seasonal period's Fourier block, an ES-ensemble
// member) together with a scalar weight summarizing its contribution,
// e.g. the boosting learning rate that was applied to it.
type ComponentWeight struct {
	Kind   string  `json:"kind"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// MarshalJSON-compatible encode/decode via goccy/go-json, exposed as
// methods so callers do not need to import the codec themselves.

// Encode serializes the model snapshot.
func (m Model) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// DecodeModel deserializes a model snapshot produced by Encode.
func DecodeModel(data []byte) (Model, error) {
	var m Model
	err := json.Unmarshal(data, &m)
	return m, err
}

// TablePrint renders a human-readable summary of the model to w: a header
// line, an indented scores/diagnostics block, and a tabwriter-aligned
// component table.
func (m Model) TablePrint(w io.Writer, prefix, indent string) error {
	fmt.Fprintf(w, "%sModel: %s\n", prefix, m.Name)
	fmt.Fprintf(w, "%s%sTrain End Time: %s\n", prefix, indent, m.TrainEndTime)
	fmt.Fprintf(w, "%s%sTrain Length: %d\n", prefix, indent, m.TrainLength)
	if m.AIC != 0 {
		fmt.Fprintf(w, "%s%sAIC: %.3f\n", prefix, indent, m.AIC)
	}

	if len(m.Diagnostics) > 0 {
		fmt.Fprintf(w, "%s%sDiagnostics:\n", prefix, indent)
		tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
		for k, v := range m.Diagnostics {
			fmt.Fprintf(tbl, "%s%s%s\t%s\t\n", prefix, indent+indent, k, v)
		}
		if err := tbl.Flush(); err != nil {
			return err
		}
	}

	if len(m.Components) == 0 {
		return nil
	}
	fmt.Fprintf(w, "%s%sComponents:\n", prefix, indent)
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tbl, "%s%sKind\tLabel\tWeight\t\n", prefix, indent+indent)
	for _, c := range m.Components {
		fmt.Fprintf(tbl, "%s%s%s\t%s\t%.4f\t\n", prefix, indent+indent, c.Kind, c.Label, c.Weight)
	}
	return tbl.Flush()
}

// ModelEq renders a short symbolic equation summarizing the additive
// decomposition, e.g. "y = level + trend + seasonal(7) + seasonal(365)".
// Used in logs and CLI output where a full TablePrint table is too
// verbose.
func ModelEq(m Model) string {
	eq := "y = level"
	for _, c := range m.Components {
		if c.Kind == "trend" {
			eq += " + trend"
		}
	}
	for _, c := range m.Components {
		if c.Kind == "seasonal" {
			eq += fmt.Sprintf(" + seasonal(%s)", c.Label)
		}
	}
	return eq
}
