package mcpserver

// CatalogRules describes how the catalog tools filter, order and paginate,
// so that clients can page through results without guessing.
const CatalogRules = `# Catalog Rules

## Events

- ` + "`status`" + ` is one of ` + "`upcoming`" + ` (default), ` + "`past`" + ` or ` + "`all`" + `.
- An event is past when its date is strictly before today. An event dated today is upcoming.
- Upcoming and all are ordered by date ascending; past is ordered by date descending.
- Listing events first makes sure the past/upcoming flags reflect today.

## Videos

- Only visible videos are returned.
- Ordered by ` + "`display_order`" + ` ascending, then ` + "`published_date`" + ` descending
  (undated videos last), then id ascending.
- ` + "`limit`" + ` defaults to 20 and is capped at 100; ` + "`offset`" + ` below zero is treated as zero.
- ` + "`list_videos_by_event`" + ` returns visible videos linked to one event, by display order.

## Playlists

- Only visible playlists are returned.
- Ordered by ` + "`display_order`" + ` ascending, then newest first.
- Same limit and offset rules as videos.

## Reclassification

` + "`reclassify_events`" + ` sets every event's past flag against a reference date
(today when omitted) and reports how many events moved in each direction.
Running it twice with the same date moves nothing the second time.
`
