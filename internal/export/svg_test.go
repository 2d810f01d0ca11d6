package export

import (
	"strings"
	"testing"

	"github.com/san-kum/splashsim/internal/dynamo"
	"github.com/san-kum/splashsim/internal/physics"
	"github.com/san-kum/splashsim/internal/trajectory"
)

func TestSceneToSVG(t *testing.T) {
	env := dynamo.DefaultEnvironment()
	pred := trajectory.NewPredictor(env).Predict(trajectory.Launch{
		Mass: 113.1, Radius: 0.3, Height: 2, AngleDeg: 45, Speed: 20, DragScale: 1,
	})
	body := dynamo.NewBody(452.4, 0.3, dynamo.Vec3{10, -1, 0})

	svg := SceneToSVG(Scene{
		Prediction: pred.Points,
		History:    []dynamo.Vec3{{0, 2, 0}, {4, 5, 0}, {10, -1, 0}},
		Body:       body,
		Waves:      physics.DefaultWaveField(),
		Floor:      env.FloorHeight,
	}, 800, 400)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("expected a complete SVG document")
	}
	if n := strings.Count(svg, "<path"); n != 3 {
		t.Errorf("expected water, prediction and history paths, got %d", n)
	}
	if !strings.Contains(svg, "stroke-dasharray") {
		t.Error("expected the prediction to be dashed")
	}
	if !strings.Contains(svg, dynamo.ClassSink.Color()) {
		t.Error("expected the dense body drawn in the sink colour")
	}
}

func TestSceneToSVG_EmptyScene(t *testing.T) {
	svg := SceneToSVG(Scene{Floor: -5}, 200, 100)
	if strings.Contains(svg, "<circle") {
		t.Error("expected no body")
	}
	if n := strings.Count(svg, "<path"); n != 1 {
		t.Errorf("expected only the water path, got %d", n)
	}
	if strings.Contains(svg, "NaN") {
		t.Error("expected finite coordinates")
	}
}
