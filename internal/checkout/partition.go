package checkout

// Partition groups lines by store. Stores keep the order in which they first
// appear and each group keeps its lines in input order.
func Partition(lines []Line) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, l := range lines {
		i, ok := index[l.StoreID]
		if !ok {
			i = len(groups)
			index[l.StoreID] = i
			groups = append(groups, Group{StoreID: l.StoreID})
		}
		groups[i].Lines = append(groups[i].Lines, l)
	}
	return groups
}
