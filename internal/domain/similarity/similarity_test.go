package similarity_test

import (
	"testing"

	encoding "github.com/okian/courserec/internal/domain/encoding"
	similarity "github.com/okian/courserec/internal/domain/similarity"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCosine(t *testing.T) {
	Convey("Given non-negative term vectors", t, func() {
		Convey("A vector compared with itself scores 1", func() {
			v := encoding.Vector{1, 2, 3}
			So(similarity.Cosine(v, v), ShouldAlmostEqual, 1.0)
		})

		Convey("Orthogonal vectors score 0", func() {
			a := encoding.Vector{1, 0, 0}
			b := encoding.Vector{0, 1, 0}
			So(similarity.Cosine(a, b), ShouldEqual, 0)
		})

		Convey("Cosine is symmetric", func() {
			a := encoding.Vector{0.4, 0, 1.2}
			b := encoding.Vector{0.9, 0.1, 0}
			So(similarity.Cosine(a, b), ShouldAlmostEqual, similarity.Cosine(b, a))
		})

		Convey("Scores stay within [0, 1]", func() {
			pairs := [][2]encoding.Vector{
				{{1, 1}, {1, 1}},
				{{0.001, 999}, {999, 0.001}},
				{{5, 0, 5}, {0, 5, 0}},
			}
			for _, p := range pairs {
				s := similarity.Cosine(p[0], p[1])
				So(s, ShouldBeGreaterThanOrEqualTo, 0)
				So(s, ShouldBeLessThanOrEqualTo, 1)
			}
		})

		Convey("Magnitude does not affect direction alignment", func() {
			a := encoding.Vector{1, 2}
			b := encoding.Vector{10, 20}
			So(similarity.Cosine(a, b), ShouldAlmostEqual, 1.0)
		})
	})
}

func TestCosineDegenerateInputs(t *testing.T) {
	Convey("Given degenerate vectors", t, func() {
		Convey("A zero query vector scores 0, not NaN", func() {
			zero := encoding.Vector{0, 0, 0}
			doc := encoding.Vector{1, 2, 3}
			So(similarity.Cosine(zero, doc), ShouldEqual, 0)
			So(similarity.Cosine(doc, zero), ShouldEqual, 0)
			So(similarity.Cosine(zero, zero), ShouldEqual, 0)
		})

		Convey("Mismatched dimensionalities score 0", func() {
			a := encoding.Vector{1, 2}
			b := encoding.Vector{1, 2, 3}
			So(similarity.Cosine(a, b), ShouldEqual, 0)
		})

		Convey("Empty vectors score 0", func() {
			So(similarity.Cosine(encoding.Vector{}, encoding.Vector{}), ShouldEqual, 0)
		})
	})
}

func TestBatch(t *testing.T) {
	Convey("Given a query and several candidates", t, func() {
		query := encoding.Vector{1, 0}
		candidates := []encoding.Vector{
			{1, 0},
			{0, 1},
			{1, 1},
		}

		Convey("When scoring the batch", func() {
			scores := similarity.Batch(query, candidates)

			Convey("Then each candidate is scored in order", func() {
				So(len(scores), ShouldEqual, 3)
				So(scores[0], ShouldAlmostEqual, 1.0)
				So(scores[1], ShouldEqual, 0)
				So(scores[2], ShouldBeBetween, 0, 1)
			})
		})
	})
}

func TestCosineOnEncodedText(t *testing.T) {
	Convey("Given vectors produced by the encoder", t, func() {
		docs := []string{
			"machine learning with python",
			"cooking italian pasta",
		}
		v := encoding.NewVectorizer(docs)

		Convey("Identical text scores 1 against itself", func() {
			a := v.Encode(docs[0])
			b := v.Encode(docs[0])
			So(similarity.Cosine(a, b), ShouldAlmostEqual, 1.0)
		})

		Convey("Unrelated text scores lower than related text", func() {
			query := v.Encode("python machine learning")
			ml := v.Encode(docs[0])
			pasta := v.Encode(docs[1])
			So(similarity.Cosine(query, ml), ShouldBeGreaterThan, similarity.Cosine(query, pasta))
		})
	})
}
