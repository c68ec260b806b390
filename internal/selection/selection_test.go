package selection_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/latviz/internal/format"
	"github.com/san-kum/latviz/internal/lattice"
	"github.com/san-kum/latviz/internal/optics"
	"github.com/san-kum/latviz/internal/resolver"
	"github.com/san-kum/latviz/internal/selection"
)

func allPlaceholders(rows []format.Row) bool {
	for _, r := range rows {
		if r.Text != format.Placeholder {
			return false
		}
	}
	return true
}

var _ = Describe("Machine", func() {
	var (
		eng *optics.Linear
		m   *selection.Machine
	)

	primary := func(x float64) selection.Click {
		return selection.Click{X: x, InPlot: true, Button: selection.ButtonPrimary}
	}
	secondary := selection.Click{X: 1, InPlot: true, Button: selection.ButtonSecondary}

	BeforeEach(func() {
		lat, err := lattice.New([]lattice.Element{
			{Name: "QF", Kind: lattice.Quadrupole, Length: 2, K1: 0.2},
			{Name: "D1", Kind: lattice.Drift, Length: 3},
			{Name: "QD", Kind: lattice.Quadrupole, Length: 5, K1: -0.08},
		})
		Expect(err).NotTo(HaveOccurred())
		eng, err = optics.NewLinear(lat.Elements(), 3)
		Expect(err).NotTo(HaveOccurred())
		r, err := resolver.New(lat, eng)
		Expect(err).NotTo(HaveOccurred())
		m = selection.New(r)
	})

	It("starts unselected with placeholder fields and no marker", func() {
		Expect(m.State()).To(Equal(selection.Unselected))
		v := m.View()
		Expect(v.HasMarker).To(BeFalse())
		Expect(allPlaceholders(v.Fields)).To(BeTrue())
		Expect(allPlaceholders(v.Info)).To(BeTrue())
		_, ok := m.ElementIndex()
		Expect(ok).To(BeFalse())
	})

	Context("primary click", func() {
		It("selects the element containing the position", func() {
			changed, err := m.Handle(primary(4.5))
			Expect(err).NotTo(HaveOccurred())
			Expect(changed).To(BeTrue())
			Expect(m.State()).To(Equal(selection.Selected))

			idx, ok := m.ElementIndex()
			Expect(ok).To(BeTrue())
			Expect(idx).To(Equal(1))

			v := m.View()
			Expect(v.HasMarker).To(BeTrue())
			Expect(v.Marker).To(Equal(4.5))
			fields := format.Map(v.Fields)
			Expect(fields[resolver.FieldIndex]).To(Equal("1"))
			Expect(fields[resolver.FieldStart]).To(Equal("2.00000"))
			Expect(fields[resolver.FieldPosition]).To(Equal("4.50000"))
			Expect(format.Map(v.Info)["Name"]).To(Equal("D1"))
		})

		It("replaces a prior selection completely", func() {
			_, _ = m.Handle(primary(1))
			_, err := m.Handle(primary(8))
			Expect(err).NotTo(HaveOccurred())

			idx, _ := m.ElementIndex()
			Expect(idx).To(Equal(2))
			v := m.View()
			Expect(v.Marker).To(Equal(8.0))
			Expect(format.Map(v.Fields)[resolver.FieldLength]).To(Equal("5.00000"))
		})

		It("is idempotent for repeated identical clicks", func() {
			_, _ = m.Handle(primary(4.5))
			first := m.View()
			_, _ = m.Handle(primary(4.5))
			Expect(m.View()).To(Equal(first))
		})

		It("leaves nothing stale when resolution fails", func() {
			_, _ = m.Handle(primary(4.5))
			eng.RadiationOn()

			_, err := m.Handle(primary(8))
			Expect(err).To(MatchError(resolver.ErrRadiationOn))
			Expect(m.State()).To(Equal(selection.Unselected))

			v := m.View()
			Expect(v.HasMarker).To(BeFalse())
			Expect(allPlaceholders(v.Fields)).To(BeTrue())
		})
	})

	Context("secondary click", func() {
		It("clears a selection and resets every field", func() {
			_, _ = m.Handle(primary(4.5))
			changed, err := m.Handle(secondary)
			Expect(err).NotTo(HaveOccurred())
			Expect(changed).To(BeTrue())
			Expect(m.State()).To(Equal(selection.Unselected))

			_, ok := m.ElementIndex()
			Expect(ok).To(BeFalse())
			v := m.View()
			Expect(v.HasMarker).To(BeFalse())
			Expect(allPlaceholders(v.Fields)).To(BeTrue())
			Expect(allPlaceholders(v.Info)).To(BeTrue())
		})

		It("resets fields even when nothing was selected", func() {
			_, _ = m.Handle(secondary)
			Expect(m.State()).To(Equal(selection.Unselected))
			Expect(allPlaceholders(m.View().Fields)).To(BeTrue())
		})

		It("treats the middle button like any non-primary button", func() {
			_, _ = m.Handle(primary(4.5))
			_, _ = m.Handle(selection.Click{X: 3, InPlot: true, Button: selection.ButtonMiddle})
			Expect(m.State()).To(Equal(selection.Unselected))
		})
	})

	Context("click outside the plot", func() {
		It("is a no-op", func() {
			_, _ = m.Handle(primary(4.5))
			before := m.View()

			for _, b := range []selection.Button{selection.ButtonPrimary, selection.ButtonSecondary} {
				changed, err := m.Handle(selection.Click{X: 0, InPlot: false, Button: b})
				Expect(err).NotTo(HaveOccurred())
				Expect(changed).To(BeFalse())
			}
			Expect(m.State()).To(Equal(selection.Selected))
			Expect(m.View()).To(Equal(before))
		})
	})

	It("keeps marker and fields consistent after the engine changes state", func() {
		_, _ = m.Handle(primary(4.5))
		eng.RadiationOn()
		v := m.View()
		Expect(v.HasMarker).To(BeFalse())
		Expect(allPlaceholders(v.Fields)).To(BeTrue())
	})
})
