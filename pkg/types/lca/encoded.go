package lca

// EncodedCell is one registry-ordered position of a record after categorical
// encoding.  Missing cells keep Missing=true; their Value is undefined and
// must not be read until an imputer has filled the cell.
type EncodedCell struct {
	Value   float64 `json:"value"`
	Missing bool    `json:"missing"`
}

// FilledCell returns an observed encoded cell.
func FilledCell(v float64) EncodedCell { return EncodedCell{Value: v} }

// MissingCell returns an encoded cell awaiting imputation.
func MissingCell() EncodedCell { return EncodedCell{Missing: true} }

// EncodedRecord is a full record in registry column order after categorical
// encoding.  Index i corresponds to field i of the schema registry that
// produced it.
type EncodedRecord []EncodedCell

// Clone returns an independent copy.
func (r EncodedRecord) Clone() EncodedRecord {
	if r == nil {
		return nil
	}
	out := make(EncodedRecord, len(r))
	copy(out, r)
	return out
}

// MissingCount returns the number of cells still awaiting a value.
func (r EncodedRecord) MissingCount() int {
	n := 0
	for _, c := range r {
		if c.Missing {
			n++
		}
	}
	return n
}

// MissingIndexes returns the positions of all missing cells, in column order.
func (r EncodedRecord) MissingIndexes() []int {
	var idx []int
	for i, c := range r {
		if c.Missing {
			idx = append(idx, i)
		}
	}
	return idx
}

//Personal.AI order the ending
