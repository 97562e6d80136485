package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/urex-bootcamp/internal/domain/entity"
)

func reg(major, knowledge, goals string) entity.Registration {
	return entity.Registration{Major: major, ProgrammingKnowledge: knowledge, ProgrammingGoals: goals}
}

func TestComputeStatsEmpty(t *testing.T) {
	assert.Equal(t, Stats{Total: 0, MostCommonMajor: "N/A"}, ComputeStats(nil))
}

func TestComputeStats(t *testing.T) {
	regs := []entity.Registration{
		reg("CS", "beginner", "Frontend"),
		reg("CS", "Python", "web design"),
		reg("Math", "java", "data"),
	}
	st := ComputeStats(regs)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, "CS", st.MostCommonMajor)
	assert.Equal(t, 33, st.BeginnerPercentage)
	assert.Equal(t, 2, st.FrontendGoals)
}

func TestComputeStatsMajorIsCaseSensitive(t *testing.T) {
	regs := []entity.Registration{
		reg("cs", "", ""),
		reg("Math", "", ""),
		reg("CS", "", ""),
		reg("Math", "", ""),
	}
	assert.Equal(t, "Math", ComputeStats(regs).MostCommonMajor)
}

func TestComputeStatsTieKeepsFirstSeen(t *testing.T) {
	regs := []entity.Registration{
		reg("Biology", "", ""),
		reg("Art", "", ""),
		reg("Art", "", ""),
		reg("Biology", "", ""),
	}
	assert.Equal(t, "Biology", ComputeStats(regs).MostCommonMajor)
}

func TestComputeStatsRoundsHalfUp(t *testing.T) {
	regs := []entity.Registration{
		reg("A", "Nothing", ""),
		reg("A", "ZERO", ""),
		reg("A", "some", ""),
		reg("A", "some", ""),
		reg("A", "some", ""),
		reg("A", "some", ""),
		reg("A", "some", ""),
		reg("A", "some", ""),
	}
	// 2/8 = 25
	assert.Equal(t, 25, ComputeStats(regs).BeginnerPercentage)

	regs = []entity.Registration{reg("A", "beginner", ""), reg("A", "x", "")}
	assert.Equal(t, 50, ComputeStats(regs).BeginnerPercentage)

	regs = []entity.Registration{reg("A", "beginner", ""), reg("A", "beginner", ""), reg("A", "x", "")}
	// 66.67 -> 67
	assert.Equal(t, 67, ComputeStats(regs).BeginnerPercentage)
}
