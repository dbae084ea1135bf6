package timetable

// NextID 返回 max(ids ∪ {0}) + 1。
// 由当前集合实时推导，不维护计数器：删除最大 id 后再创建会复用该 id。
func NextID(ids []int) int {
	maxID := 0
	for _, id := range ids {
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}
