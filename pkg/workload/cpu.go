package workload

// IsPrime is a deliberately naive trial division.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n <= 3 {
		return true
	}
	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// CountPrimes returns the number of primes in [2, limit).
func CountPrimes(limit int) int {
	count := 0
	for i := 2; i < limit; i++ {
		if IsPrime(i) {
			count++
		}
	}
	return count
}
