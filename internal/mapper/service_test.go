package mapper

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/coursegraph/internal/course"
	"github.com/vk/coursegraph/internal/depgraph"
	"github.com/vk/coursegraph/internal/testutil"
)

// sampleCourse:
//
//	1 (st)
//	├── 100 Intro
//	├── 200 Quiz      access needs 100
//	├── 300 Chapter (st), passed from 200
//	│   └── 310 Task  visibility needs 100
//	└── 400 Review (ms), referencedNode 200
func sampleCourse() *course.Course {
	return testutil.Course(
		testutil.Node("100", testutil.Title("Intro")),
		testutil.Node("200", testutil.Title("Quiz"), testutil.Access(testutil.Passed("100"))),
		testutil.Node("300", testutil.Title("Chapter"),
			testutil.Type(course.TypeStructure),
			testutil.Config(course.KeyPassedCalculator, testutil.Passed("200")),
			testutil.Children(
				testutil.Node("310", testutil.Title("Task"), testutil.Visibility(testutil.Passed("100"))),
			),
		),
		testutil.Node("400", testutil.Title("Review"),
			testutil.Type(course.TypeManualScoring),
			testutil.Config(course.KeyReferencedNode, "200"),
		),
	)
}

func TestService_Queries(t *testing.T) {
	ctx, _ := testutil.LogContext()
	svc := New()
	c := sampleCourse()

	dependents, err := svc.DependentsOf(ctx, c, "200")
	require.NoError(t, err)
	assert.Equal(t, []string{"300", "400"}, dependents)

	required, err := svc.RequiredNodes(ctx, c, "310")
	require.NoError(t, err)
	assert.Equal(t, []string{"100"}, required)

	missing, err := svc.DependentsOf(ctx, c, "999")
	require.NoError(t, err)
	assert.Empty(t, missing)

	result, err := svc.CanDelete(ctx, c, "100")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"200", "310"}, result.AffectedNodeIDs)

	result, err = svc.CanDelete(ctx, c, "400")
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestService_NilCourse(t *testing.T) {
	svc := New()

	_, err := svc.Analyze(context.Background(), nil)
	assert.ErrorIs(t, err, depgraph.ErrNilRoot)

	_, err = svc.Analyze(context.Background(), &course.Course{Title: "empty"})
	assert.ErrorIs(t, err, depgraph.ErrNilRoot)
	assert.ErrorContains(t, err, `"empty"`)
}

func TestService_DuplicationOrder(t *testing.T) {
	ctx, _ := testutil.LogContext()
	svc := New()

	t.Run("independent of caller order", func(t *testing.T) {
		a, err := svc.DuplicationOrder(ctx, sampleCourse(), []string{"400", "300", "200", "100"})
		require.NoError(t, err)
		b, err := svc.DuplicationOrder(ctx, sampleCourse(), []string{"100", "200", "300", "400"})
		require.NoError(t, err)

		assert.Equal(t, []string{"100", "200", "300", "400"}, a.Order)
		assert.Equal(t, a.Order, b.Order)
	})

	t.Run("cycle is reported", func(t *testing.T) {
		c := testutil.Course(
			testutil.Node("10", testutil.Access(testutil.Passed("11"))),
			testutil.Node("11", testutil.Access(testutil.Passed("10"))),
		)
		ctx, logs := testutil.LogContext()

		ordering, err := svc.DuplicationOrder(ctx, c, []string{"11", "10"})
		require.NoError(t, err)

		assert.Equal(t, []string{"10", "11"}, ordering.Order)
		assert.Error(t, ordering.Strict())
		assert.Contains(t, logs.String(), "Duplication order is best effort.")
	})
}

func TestService_ValidateSelection(t *testing.T) {
	ctx, _ := testutil.LogContext()

	result, err := New().ValidateSelection(ctx, sampleCourse(), []string{"300", "310"})
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.ElementsMatch(t, []string{"200", "100"}, result.SuggestedInclusions)
}

func TestService_PlanDuplication(t *testing.T) {
	ctx, _ := testutil.LogContext()
	svc := New()

	t.Run("subtree only", func(t *testing.T) {
		plan, err := svc.PlanDuplication(ctx, sampleCourse(), "300", false)
		require.NoError(t, err)

		assert.Equal(t, []string{"300", "310"}, plan.Selection)
		assert.Equal(t, []string{"300", "310"}, plan.Order)
		assert.Empty(t, plan.Unresolved)
		assert.True(t, plan.Validation.Valid)
		assert.Equal(t, []string{"200", "100"}, plan.Validation.SuggestedInclusions)
	})

	t.Run("with dependencies", func(t *testing.T) {
		plan, err := svc.PlanDuplication(ctx, sampleCourse(), "300", true)
		require.NoError(t, err)

		assert.Equal(t, []string{"300", "310", "200", "100"}, plan.Selection)
		assert.Equal(t, []string{"100", "200", "310", "300"}, plan.Order)
		assert.Equal(t, depgraph.Valid(), plan.Validation)
	})

	t.Run("unknown node", func(t *testing.T) {
		_, err := svc.PlanDuplication(ctx, sampleCourse(), "999", true)
		assert.ErrorIs(t, err, ErrNodeNotFound)
	})
}

func TestService_Report(t *testing.T) {
	ctx, _ := testutil.LogContext()
	c := testutil.Course(
		testutil.Node("100", testutil.Title("Intro")),
		testutil.Node("200", testutil.Title("Quiz"), testutil.Access(testutil.Passed("100"))),
	)

	report, err := New().Report(ctx, c)
	require.NoError(t, err)

	want := &Report{
		Course:      "Test course",
		NodeCount:   3,
		EdgeCount:   1,
		CyclicNodes: []string{},
		Nodes: []NodeRow{
			{ID: "1", Type: "st", Title: "Course root", DependsOn: []string{}, DependedBy: []string{}, Types: []depgraph.DependencyType{}},
			{ID: "100", Type: "sp", Title: "Intro", DependsOn: []string{}, DependedBy: []string{"200"}, Types: []depgraph.DependencyType{}},
			{ID: "200", Type: "sp", Title: "Quiz", DependsOn: []string{"100"}, DependedBy: []string{}, Types: []depgraph.DependencyType{depgraph.VisibilityCondition}},
		},
		Edges: []depgraph.Edge{{From: "200", To: "100", Types: []depgraph.DependencyType{depgraph.VisibilityCondition}}},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("Report mismatch (-want +got):\n%s", diff)
	}

	out, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"types":["VISIBILITY_CONDITION"]`)
}
