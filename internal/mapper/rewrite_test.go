package mapper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/coursegraph/internal/course"
	"github.com/vk/coursegraph/internal/testutil"
)

func TestUpdateReferencesAfterDuplication(t *testing.T) {
	t.Run("conditions and config", func(t *testing.T) {
		ctx, _ := testutil.LogContext()
		c := testutil.Course(
			testutil.Node("500", testutil.Access(testutil.Passed("100")), testutil.Visibility(`getScore("200") > 3`)),
			testutil.Node("600",
				testutil.Type(course.TypeStructure),
				testutil.Config(course.KeyScoreCalculator, `getScore("100") + getScore("300")`),
			),
			testutil.Node("700",
				testutil.Type(course.TypeManualScoring),
				testutil.Config(course.KeyReferencedNode, "200"),
				testutil.Config("description", `see "100"`),
			),
		)

		changed, err := UpdateReferencesAfterDuplication(ctx, c, map[string]string{"100": "101", "200": "201"})
		require.NoError(t, err)

		assert.Equal(t, 5, changed)
		n500 := c.FindNode("500")
		assert.Equal(t, `getPassed("101")`, n500.AccessCondition)
		assert.Equal(t, `getScore("201") > 3`, n500.VisibilityCondition)
		assert.Equal(t, `getScore("101") + getScore("300")`, c.FindNode("600").Config.StringValue(course.KeyScoreCalculator))
		n700 := c.FindNode("700")
		assert.Equal(t, "201", n700.Config.StringValue(course.KeyReferencedNode))
		assert.Equal(t, `see "101"`, n700.Config.StringValue("description"))
	})

	t.Run("swapped ids are not chained", func(t *testing.T) {
		c := testutil.Course(
			testutil.Node("500", testutil.Access(testutil.Passed("100", "200"))),
		)

		_, err := UpdateReferencesAfterDuplication(context.Background(), c, map[string]string{"100": "200", "200": "100"})
		require.NoError(t, err)

		assert.Equal(t, testutil.Passed("200", "100"), c.FindNode("500").AccessCondition)
	})

	t.Run("prefix ids stay distinct", func(t *testing.T) {
		c := testutil.Course(
			testutil.Node("500", testutil.Access(testutil.Passed("12", "123"))),
		)

		changed, err := UpdateReferencesAfterDuplication(context.Background(), c, map[string]string{"12": "99"})
		require.NoError(t, err)

		assert.Equal(t, 1, changed)
		assert.Equal(t, testutil.Passed("99", "123"), c.FindNode("500").AccessCondition)
	})

	t.Run("nothing to change", func(t *testing.T) {
		c := testutil.Course(testutil.Node("500"))

		changed, err := UpdateReferencesAfterDuplication(context.Background(), c, map[string]string{"100": "101"})
		require.NoError(t, err)
		assert.Zero(t, changed)

		changed, err = UpdateReferencesAfterDuplication(context.Background(), c, nil)
		require.NoError(t, err)
		assert.Zero(t, changed)
	})

	t.Run("opaque ids", func(t *testing.T) {
		c := &course.Course{Root: course.NewNode("intro", course.TypeStructure, "Intro")}
		quiz := course.NewNode("quiz", "iqtest", "Quiz")
		quiz.AccessCondition = `getPassed("intro")`
		quiz.Config.Set(course.KeyReferencedNode, "intro")
		c.Root.AddChild(quiz)

		changed, err := UpdateReferencesAfterDuplication(context.Background(), c, map[string]string{"intro": "intro-copy"})
		require.NoError(t, err)

		assert.Equal(t, 2, changed)
		assert.Equal(t, `getPassed("intro-copy")`, quiz.AccessCondition)
		assert.Equal(t, "intro-copy", quiz.Config.StringValue(course.KeyReferencedNode))
	})

	t.Run("empty id changes nothing", func(t *testing.T) {
		c := testutil.Course(testutil.Node("500", testutil.Access(testutil.Passed("100"))))

		_, err := UpdateReferencesAfterDuplication(context.Background(), c, map[string]string{"100": "101", "200": " "})
		assert.ErrorContains(t, err, `empty target id for "200"`)
		assert.Equal(t, testutil.Passed("100"), c.FindNode("500").AccessCondition)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := UpdateReferencesAfterDuplication(context.Background(), &course.Course{}, map[string]string{"1": "2"})
		assert.Error(t, err)
	})
}
