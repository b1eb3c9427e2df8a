package keywords

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Matches(t *testing.T) {
	s := New("BY TRF", "salary", "refund", "trf from")

	assert.Equal(t, []string{"by trf"}, s.Matches("25/10/25 BY TRF. FROM ACME"))
	assert.Equal(t, []string{"salary", "trf from"}, s.Matches("NEFT TRF FROM EMPLOYER SALARY OCT"))
	assert.Nil(t, s.Matches("TO TRF. - ATM"))
	assert.Nil(t, s.Matches(""))
}

func TestSet_ContainsAny(t *testing.T) {
	s := New("credit", "deposit", "cr")

	assert.True(t, s.ContainsAny("", "cash deposit"))
	assert.True(t, s.ContainsAny("Credit"))
	assert.True(t, s.ContainsAny("ACCRUED"), "substring semantics")
	assert.False(t, s.ContainsAny("atm withdrawal"))
}

func TestSet_Empty(t *testing.T) {
	s := New("", "  ")
	assert.Nil(t, s.Matches("anything"))
	assert.False(t, s.ContainsAny("anything"))
}

func TestSet_Concurrent(t *testing.T) {
	s := New("salary")
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, s.ContainsAny("MONTHLY SALARY"))
		}()
	}
	wg.Wait()
}
