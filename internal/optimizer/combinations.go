package optimizer

// forEachCombination invokes fn once per k-element subset of [0,n), in
// lexicographic index order. fn receives a scratch slice that is reused
// between calls and must not be retained.
func forEachCombination(n, k int, fn func(idx []int)) {
	if k < 0 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		fn(idx)
		// Advance to the next combination.
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// countCombinations returns C(n, k) without overflow checks; callers keep
// n small enough that the product fits in an int64.
func countCombinations(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := int64(1)
	for i := 1; i <= k; i++ {
		result = result * int64(n-k+i) / int64(i)
	}
	return result
}
