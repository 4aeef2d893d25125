package mlmodel

import "sort"

// treeNode 회귀 트리 노드
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
	leaf      bool
}

// buildTree 분산 감소 기준으로 회귀 트리 구성
// maxDepth 0은 깊이 무제한
func buildTree(X [][]float64, y []float64, indices []int, depth, maxDepth, minSamplesSplit int) *treeNode {
	n := len(indices)

	if n < minSamplesSplit || (maxDepth > 0 && depth >= maxDepth) || isConstant(y, indices) {
		return &treeNode{leaf: true, value: meanOf(y, indices)}
	}

	feature, threshold, ok := bestSplit(X, y, indices)
	if !ok {
		return &treeNode{leaf: true, value: meanOf(y, indices)}
	}

	var leftIdx, rightIdx []int
	for _, i := range indices {
		if X[i][feature] <= threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}

	// 한쪽이 비면 더 나눌 수 없음
	if len(leftIdx) == 0 || len(rightIdx) == 0 {
		return &treeNode{leaf: true, value: meanOf(y, indices)}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      buildTree(X, y, leftIdx, depth+1, maxDepth, minSamplesSplit),
		right:     buildTree(X, y, rightIdx, depth+1, maxDepth, minSamplesSplit),
	}
}

// predict 루트부터 리프까지 내려가며 예측
func (t *treeNode) predict(x []float64) float64 {
	node := t
	for !node.leaf {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

// bestSplit 전체 피처에 대해 SSE를 최소화하는 분할 탐색
// 임계값은 인접한 서로 다른 값의 중간점
func bestSplit(X [][]float64, y []float64, indices []int) (int, float64, bool) {
	nFeatures := len(X[indices[0]])
	n := len(indices)

	bestSSE := sseOf(y, indices)
	bestFeature, bestThreshold := -1, 0.0
	found := false

	sorted := make([]int, n)
	for f := 0; f < nFeatures; f++ {
		copy(sorted, indices)
		sort.Slice(sorted, func(a, b int) bool {
			return X[sorted[a]][f] < X[sorted[b]][f]
		})

		// prefix sums으로 좌/우 SSE를 증분 계산
		var leftSum, leftSqSum float64
		rightSum, rightSqSum := sumsOf(y, sorted)

		for k := 0; k < n-1; k++ {
			v := y[sorted[k]]
			leftSum += v
			leftSqSum += v * v
			rightSum -= v
			rightSqSum -= v * v

			// 같은 값 사이에서는 분할 불가
			if X[sorted[k]][f] == X[sorted[k+1]][f] {
				continue
			}

			nl, nr := float64(k+1), float64(n-k-1)
			sse := (leftSqSum - leftSum*leftSum/nl) + (rightSqSum - rightSum*rightSum/nr)
			if sse < bestSSE {
				bestSSE = sse
				bestFeature = f
				bestThreshold = (X[sorted[k]][f] + X[sorted[k+1]][f]) / 2
				found = true
			}
		}
	}

	return bestFeature, bestThreshold, found
}

func meanOf(y []float64, indices []int) float64 {
	sum := 0.0
	for _, i := range indices {
		sum += y[i]
	}
	return sum / float64(len(indices))
}

func sseOf(y []float64, indices []int) float64 {
	sum, sqSum := sumsOf(y, indices)
	n := float64(len(indices))
	return sqSum - sum*sum/n
}

func sumsOf(y []float64, indices []int) (sum, sqSum float64) {
	for _, i := range indices {
		sum += y[i]
		sqSum += y[i] * y[i]
	}
	return sum, sqSum
}

func isConstant(y []float64, indices []int) bool {
	first := y[indices[0]]
	for _, i := range indices[1:] {
		if y[i] != first {
			return false
		}
	}
	return true
}
