package importers

import (
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/smrx/internal/models"
	"github.com/desertthunder/smrx/internal/shared"
)

const wxrFixture = `<?xml version="1.0" encoding="UTF-8" ?>
<rss version="2.0"
	xmlns:excerpt="http://wordpress.org/export/1.2/excerpt/"
	xmlns:content="http://purl.org/rss/1.0/modules/content/"
	xmlns:dc="http://purl.org/dc/elements/1.1/"
	xmlns:wp="http://wordpress.org/export/1.2/">
<channel>
	<title>Static Motor Recordings</title>
	<link>https://staticmotorrecordings.com</link>
	<description>Independent label</description>
	<wp:category>
		<wp:term_id>2</wp:term_id>
		<wp:category_nicename>the-longwalls</wp:category_nicename>
		<wp:category_parent></wp:category_parent>
		<wp:cat_name><![CDATA[The Longwalls]]></wp:cat_name>
	</wp:category>
	<wp:category>
		<wp:term_id>1</wp:term_id>
		<wp:category_nicename>uncategorized</wp:category_nicename>
		<wp:cat_name><![CDATA[Uncategorized]]></wp:cat_name>
	</wp:category>
	<item>
		<title>Gold Standard out now on vinyl</title>
		<pubDate>Tue, 10 Mar 2015 12:00:00 +0000</pubDate>
		<content:encoded><![CDATA[<p>Listen at <a href="https://thelongwalls.bandcamp.com/album/gold-standard">Bandcamp</a> or <a href="https://thelongwalls.bandcamp.com/album/gold-standard">again</a>.</p><iframe src="https://www.youtube.com/embed/xyz_12-3"></iframe>]]></content:encoded>
		<excerpt:encoded><![CDATA[]]></excerpt:encoded>
		<wp:post_id>10</wp:post_id>
		<wp:post_name>gold-standard-out-now</wp:post_name>
		<wp:status>publish</wp:status>
		<wp:post_type>post</wp:post_type>
		<category domain="category" nicename="the-longwalls"><![CDATA[The Longwalls]]></category>
		<category domain="post_tag" nicename="gold-standard"><![CDATA[Gold Standard]]></category>
	</item>
	<item>
		<title>Live at The Bridge this Friday</title>
		<pubDate>Fri, 11 Mar 2016 09:30:00 -0500</pubDate>
		<content:encoded><![CDATA[<p>Doors &amp; tickets at 8.</p> <p>https://soundcloud.com/thelongwalls/bridge</p>]]></content:encoded>
		<excerpt:encoded><![CDATA[<em>Doors</em> at eight.]]></excerpt:encoded>
		<wp:post_id>11</wp:post_id>
		<wp:post_name>live-at-the-bridge</wp:post_name>
		<wp:status>publish</wp:status>
		<wp:post_type>post</wp:post_type>
	</item>
	<item>
		<title>Draft thoughts</title>
		<pubDate>Sat, 12 Mar 2016 09:30:00 +0000</pubDate>
		<wp:post_id>12</wp:post_id>
		<wp:status>draft</wp:status>
		<wp:post_type>post</wp:post_type>
	</item>
	<item>
		<title>cover.jpg</title>
		<pubDate>Sat, 12 Mar 2016 09:30:00 +0000</pubDate>
		<wp:post_id>13</wp:post_id>
		<wp:status>publish</wp:status>
		<wp:post_type>attachment</wp:post_type>
	</item>
</channel>
</rss>`

func TestParseWXR(t *testing.T) {
	export, err := ParseWXR(strings.NewReader(wxrFixture))
	if err != nil {
		t.Fatalf("ParseWXR failed: %v", err)
	}

	if export.Title != "Static Motor Recordings" {
		t.Errorf("unexpected title %q", export.Title)
	}
	if len(export.Categories) != 2 || export.Categories[0].Slug != "the-longwalls" || export.Categories[0].Name != "The Longwalls" {
		t.Errorf("unexpected categories %+v", export.Categories)
	}

	t.Run("Published Posts Newest First", func(t *testing.T) {
		if len(export.Posts) != 2 {
			t.Fatalf("expected 2 published posts, got %d", len(export.Posts))
		}
		if export.Posts[0].ID != "11" || export.Posts[0].Date != "2016-03-11" {
			t.Errorf("expected newest post first, got %+v", export.Posts[0])
		}
	})

	t.Run("Terms", func(t *testing.T) {
		post := export.Posts[1]
		if len(post.Categories) != 1 || post.Categories[0] != "The Longwalls" {
			t.Errorf("unexpected categories %v", post.Categories)
		}
		if len(post.Tags) != 1 || post.Tags[0] != "Gold Standard" {
			t.Errorf("unexpected tags %v", post.Tags)
		}
	})

	t.Run("Content And Excerpt Split", func(t *testing.T) {
		post := export.Posts[0]
		if !strings.Contains(post.Content, "Doors &amp; tickets") {
			t.Errorf("unexpected content %q", post.Content)
		}
		if post.Excerpt != "<em>Doors</em> at eight." {
			t.Errorf("unexpected excerpt %q", post.Excerpt)
		}
	})

	t.Run("URLs", func(t *testing.T) {
		urls := export.Posts[1].URLs
		if len(urls.Bandcamp) != 1 || urls.Bandcamp[0] != "https://thelongwalls.bandcamp.com/album/gold-standard" {
			t.Errorf("expected one deduplicated bandcamp url, got %v", urls.Bandcamp)
		}
		if len(urls.YouTube) != 1 || urls.YouTube[0] != "xyz_12-3" {
			t.Errorf("expected youtube id, got %v", urls.YouTube)
		}
		if sc := export.Posts[0].URLs.SoundCloud; len(sc) != 1 || sc[0] != "https://soundcloud.com/thelongwalls/bridge" {
			t.Errorf("expected soundcloud url, got %v", sc)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		if _, err := ParseWXR(strings.NewReader("<rss><channel>")); !errors.Is(err, shared.ErrMalformedData) {
			t.Errorf("expected ErrMalformedData, got %v", err)
		}
	})
}

func TestClassify(t *testing.T) {
	tc := []struct {
		title string
		want  string
	}{
		{"Kind words from the Globe", TypePress},
		{"Best Of 2015 lists", TypePress},
		{"Red Shirts out now", TypeRelease},
		{"Vinyl pre-orders", TypeRelease},
		{"Spring tour dates", TypeLive},
		{"New video premiere", TypeVideo},
		{"Heard on MTV", TypePlacement},
		{"Spins on WMBR", TypeRadio},
		{"Welcome to the label", TypeNews},
		{"", TypeNews},
	}
	for _, tt := range tc {
		if got := Classify(tt.title); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestCleanHTML(t *testing.T) {
	got := CleanHTML("<p>Doors &amp;\n\n<b>tickets</b></p>  ")
	if got != "Doors & tickets" {
		t.Errorf("unexpected %q", got)
	}
}

func TestExportTimelineAndArtists(t *testing.T) {
	export, err := ParseWXR(strings.NewReader(wxrFixture))
	if err != nil {
		t.Fatalf("ParseWXR failed: %v", err)
	}

	t.Run("Timeline", func(t *testing.T) {
		entries := export.Timeline()
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].Type != TypeLive || entries[0].Excerpt != "Doors at eight." {
			t.Errorf("unexpected first entry %+v", entries[0])
		}
		if entries[1].Type != TypeRelease || !strings.HasPrefix(entries[1].Excerpt, "Listen at Bandcamp") {
			t.Errorf("expected excerpt from content, got %+v", entries[1])
		}
	})

	t.Run("Artists", func(t *testing.T) {
		albums := []models.Album{
			{Name: "Gold Standard", Slug: "gold-standard", Artist: "The Longwalls", BandcampURL: "https://thelongwalls.bandcamp.com/album/gold-standard"},
			{Name: "Cyclops", Slug: "cyclops", Artist: "Kurt von Stetten"},
		}
		artists := export.Artists(albums)
		if len(artists) != 1 {
			t.Fatalf("expected Uncategorized skipped, got %+v", artists)
		}
		if len(artists[0].Albums) != 1 || artists[0].BandcampURL == "" {
			t.Errorf("unexpected artist %+v", artists[0])
		}
	})

	t.Run("MergeArtists", func(t *testing.T) {
		existing := []models.Artist{{Name: "The Longwalls", Slug: "the-longwalls", Bio: "kept"}}
		incoming := []models.Artist{{Name: "The Longwalls", Slug: "the-longwalls"}, {Name: "Gatsby", Slug: "gatsby"}}
		merged, added := MergeArtists(existing, incoming)
		if added != 1 || len(merged) != 2 || merged[0].Bio != "kept" {
			t.Errorf("unexpected merge %d %+v", added, merged)
		}
	})
}
