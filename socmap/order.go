package socmap

// initSequence lists the tile indices in bring-up order. The IO tile owns
// the boot path and must be live before any CPU attempts discovery, so the
// walk starts there and expands outward: rows from the IO tile's row down
// to zero, then upward, and the columns of each row ordered the same way
// around the IO tile's column. CPU tiles follow by descending tile index,
// which leaves CPU0's tile last: CPU0 alone drives board-wide bring-up
// signaling and must be configured only after every other CPU is ready.
func (r *Resolved) initSequence() []int {
	io := r.Tiles[r.IOTile]
	seq := make([]int, 0, r.NumTiles()+r.NumCPUs)

	rows := outwardOrder(io.Row, r.Rows)
	cols := outwardOrder(io.Col, r.Cols)
	for _, row := range rows {
		for _, col := range cols {
			seq = append(seq, row*r.Cols+col)
		}
	}

	for i := r.NumTiles() - 1; i >= 0; i-- {
		if r.Tiles[i].Kind == KindCPU {
			seq = append(seq, i)
		}
	}

	return seq
}

// resetSequence lists memory-controller tiles by descending tile index,
// then CPU tiles the same way with CPU0's tile last.
func (r *Resolved) resetSequence() []int {
	seq := make([]int, 0, r.NumMem+r.NumCPUs)

	for i := r.NumTiles() - 1; i >= 0; i-- {
		if r.Tiles[i].Kind == KindMem {
			seq = append(seq, i)
		}
	}
	for i := r.NumTiles() - 1; i >= 0; i-- {
		if r.Tiles[i].Kind == KindCPU {
			seq = append(seq, i)
		}
	}

	return seq
}

// outwardOrder returns 0..n-1 reordered to start at the pivot, first
// descending to zero, then ascending from pivot+1.
func outwardOrder(pivot, n int) []int {
	order := make([]int, 0, n)
	for i := pivot; i >= 0; i-- {
		order = append(order, i)
	}
	for i := pivot + 1; i < n; i++ {
		order = append(order, i)
	}
	return order
}
