// Package catalog resolves song metadata from the game's music database.
//
// The database (music_db.xml) is a Shift-JIS encoded XML document with one
// <music> element per song:
//
//	<mdb>
//	  <music id="1234">
//	    <info>
//	      <title_name>Foo</title_name>
//	      <artist_name>Bar</artist_name>
//	      <inf_ver __type="u8">4</inf_ver>
//	    </info>
//	  </music>
//	</mdb>
//
// # Lookup
//
//	cat := catalog.Open("music_db.xml")
//	meta, err := cat.Lookup(1234)
//	if errors.Is(err, catalog.ErrNotFound) {
//	    // skip the folder
//	}
//
// The document is read and parsed once, on the first Lookup. A document that
// cannot be read or parsed makes every Lookup fail with ErrLookupFailed.
//
// # Version Labels
//
// VersionLabel and VersionName map a difficulty version to the short label
// used in video titles ("HVN") and the full game version name used in upload
// descriptions ("HEAVENLY HAVEN").
package catalog
