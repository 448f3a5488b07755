package samsieve_api

// A predicate deciding whether a mate pair survives
type PairFilter interface {
	// The name used in drop counters and logs
	Name() string

	// Report whether the pair passes this filter
	Keep(pair Pair) (bool, error)
}

// Drops pairs where a mate carries an edit distance at or above the cutoff
// The filter is skipped when either mate lacks the NM tag
type editDistanceFilter struct {
	cutoff int
}

func (f editDistanceFilter) Name() string { return "edit-distance" }

func (f editDistanceFilter) Keep(pair Pair) (bool, error) {
	nm1, ok1, err := pair.First.EditDistance()
	if err != nil {
		return false, err
	}
	nm2, ok2, err := pair.Second.EditDistance()
	if err != nil {
		return false, err
	}
	if !ok1 || !ok2 {
		return true, nil
	}
	return nm1 < f.cutoff && nm2 < f.cutoff, nil
}

// Keeps pairs whose mapping qualities reach the cutoff
// In single-end mode one passing mate is enough, otherwise both must pass
type mapQualityFilter struct {
	cutoff    int
	singleEnd bool
}

func (f mapQualityFilter) Name() string { return "mapq" }

func (f mapQualityFilter) Keep(pair Pair) (bool, error) {
	pass1 := pair.First.MapQ >= f.cutoff
	pass2 := pair.Second.MapQ >= f.cutoff
	if f.singleEnd {
		return pass1 || pass2, nil
	}
	return pass1 && pass2, nil
}

// An ordered list of pair filters
// A pair survives only when every filter keeps it
type FilterPipeline []PairFilter

// Build the filters enabled by the config, in the order they are applied
// Duplicate removal is not part of the pipeline: duplicates are excluded by
// the LineSource before pairing.
func NewFilterPipeline(config *FilterConfig) FilterPipeline {
	pipeline := FilterPipeline{}
	if config.HasEditDistance {
		pipeline = append(pipeline, editDistanceFilter{cutoff: config.EditDistance})
	}
	pipeline = append(pipeline, mapQualityFilter{cutoff: config.MapQ, singleEnd: config.SingleEnd})
	return pipeline
}

// Decide on a pair
// It returns the name of the first filter that rejected the pair, or "" when
// the pair is kept
func (pipeline FilterPipeline) Evaluate(pair Pair) (string, error) {
	for _, filter := range pipeline {
		keep, err := filter.Keep(pair)
		if err != nil {
			return "", err
		}
		if !keep {
			return filter.Name(), nil
		}
	}
	return "", nil
}
