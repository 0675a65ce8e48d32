package types

// Kind selects one of the two media pipelines. Its value doubles as the
// media segment of every destination path.
type Kind string

const (
	KindImages Kind = "images"
	KindVideos Kind = "videos"
)

// SplitName is one of the three dataset partitions.
type SplitName string

const (
	SplitTrain SplitName = "train"
	SplitVal   SplitName = "val"
	SplitTest  SplitName = "test"
)

// SplitOrder is the fixed iteration order for splits, so that planning,
// reporting and the written manifest always agree.
var SplitOrder = []SplitName{SplitTrain, SplitVal, SplitTest}

// Class is one discovered dataset category: the directory path relative to
// the source root (forward slashes) plus the media files directly inside it.
type Class struct {
	Label string
	Files []string
}

// Manifest is the result of collecting a source tree. Classes keep their
// discovery (lexical walk) order so reruns over an unchanged tree are
// comparable.
type Manifest struct {
	Classes []Class
}

// Total returns the number of collected files across all classes.
func (m Manifest) Total() int {
	n := 0
	for _, c := range m.Classes {
		n += len(c.Files)
	}
	return n
}

// Counts holds one number per split. The field order matters: it is the
// order the JSON summary line prints in.
type Counts struct {
	Train int `json:"train"`
	Val   int `json:"val"`
	Test  int `json:"test"`
}

// Add increments the counter for the given split.
func (c *Counts) Add(s SplitName) {
	switch s {
	case SplitTrain:
		c.Train++
	case SplitVal:
		c.Val++
	case SplitTest:
		c.Test++
	}
}

// Get returns the counter for the given split.
func (c Counts) Get(s SplitName) int {
	switch s {
	case SplitTrain:
		return c.Train
	case SplitVal:
		return c.Val
	case SplitTest:
		return c.Test
	}
	return 0
}

// Total returns the sum over all three splits.
func (c Counts) Total() int {
	return c.Train + c.Val + c.Test
}

// Outcome is the per-item result of one planned placement.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeSkipped Outcome = "skipped" // dry run: planned but not executed
	OutcomeFailed  Outcome = "failed"
)

// PlanEntry is one (class, split, item) placement decision plus, after
// execution, what happened to it.
type PlanEntry struct {
	Class   string
	Split   SplitName
	Source  string
	Dest    string
	Outcome Outcome
	Err     string
}

// RunManifest is the durable description of one completed run, written as
// manifest.json under the output root so downstream loaders can reproduce
// the partition without re-deriving it.
type RunManifest struct {
	Kind    Kind                           `json:"kind"`
	Seed    int64                          `json:"seed"`
	Ratios  [3]float64                     `json:"ratios"`
	Backend string                         `json:"backend"`
	Splits  map[string]map[string][]string `json:"splits"` // split -> class label -> file names
}
