package similarity

// PartitionTopK partially reorders idx in place so that the k entries with
// the smallest companion scores end up in idx[0:k]. Order within each side
// of the split is unspecified. Dual-pointer quickselect with the midpoint
// score as pivot, looping into whichever side still contains index k.
// Expected O(len(idx)), no allocation.
//
// The convention throughout the kernel is "smaller score = better"; callers
// selecting the largest values negate their scores first.
func PartitionTopK(idx []int32, scores []float32, k int) {
	lo, hi := 0, len(idx)-1
	for lo < hi {
		pivot := scores[idx[(lo+hi)/2]]
		i, j := lo, hi
		for i <= j {
			for scores[idx[i]] < pivot {
				i++
			}
			for scores[idx[j]] > pivot {
				j--
			}
			if i <= j {
				idx[i], idx[j] = idx[j], idx[i]
				i++
				j--
			}
		}
		switch {
		case k <= j:
			hi = j
		case k >= i:
			lo = i
		default:
			return
		}
	}
}
