// Package dispatch turns inbound WhatsApp media messages into external
// records.
//
// A Recorder handles captioned media from the monitored group: the caption is
// the label, the label is resolved to a record (a Trello card or a sheet tab),
// the media is uploaded, and the upload is written to the record. The operator
// is told about every outcome in a private chat. A Mirror uploads any media
// from the group to Drive and replies with the link in the group itself.
package dispatch
