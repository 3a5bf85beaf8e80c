package join

import (
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/go-sif/geoprep/table"
)

// canonicalKey produces a representation of a join key under which numerically
// equal numbers compare equal (so 1 joins 1.0). Missing keys have no representation
// and never match.
func canonicalKey(v interface{}) (string, bool) {
	switch k := v.(type) {
	case float64:
		if math.IsNaN(k) {
			return "", false
		}
		return "n:" + strconv.FormatFloat(k, 'g', -1, 64), true
	case int64:
		return "n:" + strconv.FormatFloat(float64(k), 'g', -1, 64), true
	case string:
		return "s:" + k, true
	case bool:
		return "b:" + strconv.FormatBool(k), true
	default:
		return "", false
	}
}

// keyIndex maps hashed join keys to the rows holding them, in row order
type keyIndex struct {
	keys    []string
	present []bool
	buckets map[uint64][]int
}

func buildKeyIndex(t *table.Table, key string) (*keyIndex, error) {
	values, err := t.Column(key)
	if err != nil {
		return nil, err
	}
	idx := &keyIndex{
		keys:    make([]string, len(values)),
		present: make([]bool, len(values)),
		buckets: make(map[uint64][]int),
	}
	for i, v := range values {
		k, ok := canonicalKey(v)
		if !ok {
			continue
		}
		idx.keys[i] = k
		idx.present[i] = true
		h := xxhash.Sum64String(k)
		idx.buckets[h] = append(idx.buckets[h], i)
	}
	return idx, nil
}

// lookup returns the rows whose key equals k, in row order
func (idx *keyIndex) lookup(k string) []int {
	bucket := idx.buckets[xxhash.Sum64String(k)]
	var res []int
	for _, row := range bucket {
		if idx.keys[row] == k {
			res = append(res, row)
		}
	}
	return res
}
