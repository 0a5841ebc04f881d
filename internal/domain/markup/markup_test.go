package markup

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	. "github.com/smartystreets/goconvey/convey"
)

func mustDoc(html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		panic(err)
	}
	return doc
}

func TestText(t *testing.T) {
	Convey("Given a document with padded text", t, func() {
		doc := mustDoc(`<div class="c-listing-fight__corner-name">
			<span>Jon</span>
			<span>Jones</span>
		</div><div class="c-listing-fight__corner-name">Tom  Aspinall </div>`)
		names := doc.Find(CornerNameSelector)

		Convey("Then Text collapses whitespace of the first match", func() {
			So(Text(names), ShouldEqual, "Jon Jones")
		})

		Convey("Then TextAt indexes corners and defaults when absent", func() {
			So(TextAt(names, RedCorner), ShouldEqual, "Jon Jones")
			So(TextAt(names, BlueCorner), ShouldEqual, "Tom Aspinall")
			So(TextAt(names, 2), ShouldEqual, "")
			So(TextAt(names, -1), ShouldEqual, "")
		})

		Convey("Then empty selections default", func() {
			So(Text(doc.Find(".missing")), ShouldEqual, "")
			So(Text(nil), ShouldEqual, "")
		})
	})
}

func TestHref(t *testing.T) {
	Convey("Given anchors", t, func() {
		doc := mustDoc(`<a class="next" href=" /events?page=2 ">n</a><a class="previous" href="">p</a><a class="x">x</a>`)

		href, ok := Href(doc.Find(NextLinkSelector))
		So(ok, ShouldBeTrue)
		So(href, ShouldEqual, "/events?page=2")

		_, ok = Href(doc.Find(PreviousLinkSelector))
		So(ok, ShouldBeFalse)

		_, ok = Href(doc.Find("a.x"))
		So(ok, ShouldBeFalse)

		_, ok = Href(doc.Find("a.none"))
		So(ok, ShouldBeFalse)
	})
}

func TestFightBlockSelector(t *testing.T) {
	Convey("Given blocks with compound class lists", t, func() {
		doc := mustDoc(`
			<div class="l-listing__item c-listing-fight--main"></div>
			<div class="c-listing-fight"><div class="c-listing-fight__content"></div></div>
			<div class="other"></div>`)

		Convey("Then every div whose class contains the marker matches", func() {
			So(doc.Find(FightBlockSelector).Length(), ShouldEqual, 3)
		})
	})
}

func TestIsEventLink(t *testing.T) {
	Convey("Given hrefs", t, func() {
		So(IsEventLink("/event/ufc-310"), ShouldBeTrue)
		So(IsEventLink("https://www.ufc.com/event/ufc-310"), ShouldBeTrue)
		So(IsEventLink("/events"), ShouldBeFalse)
		So(IsEventLink("/athlete/jon-jones"), ShouldBeFalse)
	})
}
