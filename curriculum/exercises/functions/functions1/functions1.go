package functions1

func double(n int) int {
	return n
}
