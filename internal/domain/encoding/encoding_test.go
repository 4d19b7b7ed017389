package encoding_test

import (
	"testing"

	encoding "github.com/okian/courserec/internal/domain/encoding"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVectorizerFit(t *testing.T) {
	Convey("Given a corpus of course descriptions", t, func() {
		docs := []string{
			"Learn Python programming from scratch",
			"Build web applications with JavaScript",
			"Analyze data with Python and statistics",
		}
		v := encoding.NewVectorizer(docs)

		Convey("Then the vocabulary covers all non-stop-word terms", func() {
			So(v.VocabularySize(), ShouldBeGreaterThan, 0)
			vocab := v.Vocabulary()
			So(vocab, ShouldContain, "python")
			So(vocab, ShouldContain, "javascript")
			So(vocab, ShouldNotContain, "with")
			So(vocab, ShouldNotContain, "and")
		})

		Convey("And the vocabulary order is stable across fits", func() {
			again := encoding.NewVectorizer(docs)
			So(again.Vocabulary(), ShouldResemble, v.Vocabulary())
		})

		Convey("When encoding a document", func() {
			vec := v.Encode(docs[0])

			Convey("Then dimensionality equals vocabulary size", func() {
				So(len(vec), ShouldEqual, v.VocabularySize())
			})

			Convey("And all entries are non-negative", func() {
				for _, w := range vec {
					So(w, ShouldBeGreaterThanOrEqualTo, 0)
				}
			})

			Convey("And the vector carries signal", func() {
				So(vec.IsZero(), ShouldBeFalse)
				So(vec.Magnitude(), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When encoding an out-of-vocabulary query", func() {
			vec := v.Encode("quantum chromodynamics")

			Convey("Then the vector is zero", func() {
				So(vec.IsZero(), ShouldBeTrue)
				So(vec.Magnitude(), ShouldEqual, 0)
			})
		})

		Convey("When encoding an empty or all-stop-word query", func() {
			So(v.Encode("").IsZero(), ShouldBeTrue)
			So(v.Encode("the and with from").IsZero(), ShouldBeTrue)
		})

		Convey("When a query mixes known and unknown terms", func() {
			vec := v.Encode("python chromodynamics")

			Convey("Then only the known term contributes", func() {
				So(vec.IsZero(), ShouldBeFalse)
			})
		})
	})
}

func TestVectorizerIDFWeighting(t *testing.T) {
	Convey("Given a corpus where one term is common and one is rare", t, func() {
		docs := []string{
			"python basics course",
			"python advanced course",
			"python blockchain course",
		}
		v := encoding.NewVectorizer(docs)

		Convey("When encoding a document containing both", func() {
			vec := v.Encode("python blockchain")
			vocab := v.Vocabulary()
			idx := func(term string) int {
				for i, t := range vocab {
					if t == term {
						return i
					}
				}
				return -1
			}

			Convey("Then the rare term outweighs the ubiquitous one", func() {
				So(idx("python"), ShouldBeGreaterThanOrEqualTo, 0)
				So(idx("blockchain"), ShouldBeGreaterThanOrEqualTo, 0)
				So(vec[idx("blockchain")], ShouldBeGreaterThan, vec[idx("python")])
			})
		})

		Convey("When a term repeats within a document", func() {
			once := v.Encode("blockchain")
			twice := v.Encode("blockchain blockchain")
			vocab := v.Vocabulary()
			var i int
			for j, t := range vocab {
				if t == "blockchain" {
					i = j
				}
			}

			Convey("Then term frequency scales the weight", func() {
				So(twice[i], ShouldAlmostEqual, 2*once[i])
			})
		})
	})
}

func TestVectorizerMaxFeatures(t *testing.T) {
	Convey("Given a bounded vocabulary", t, func() {
		docs := []string{
			"alpha beta gamma delta",
			"alpha beta gamma",
			"alpha beta",
			"alpha",
		}
		v := encoding.NewVectorizer(docs, encoding.WithMaxFeatures(2))

		Convey("Then only the most frequent terms survive", func() {
			So(v.VocabularySize(), ShouldEqual, 2)
			So(v.Vocabulary(), ShouldResemble, []string{"alpha", "beta"})
		})
	})
}

func TestEncodeAll(t *testing.T) {
	Convey("Given a vectorizer", t, func() {
		docs := []string{"python data", "web design"}
		v := encoding.NewVectorizer(docs)

		Convey("When encoding the whole corpus", func() {
			vecs := v.EncodeAll(docs)

			Convey("Then order and dimensionality are preserved", func() {
				So(len(vecs), ShouldEqual, 2)
				for _, vec := range vecs {
					So(len(vec), ShouldEqual, v.VocabularySize())
				}
			})
		})
	})
}
