// Package events defines the typed assistant event contract.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - query.*
//   - reply.*
//   - recording.*
//   - playback.*
//
// query events
//
//   - QuerySubmitted (query.submitted): a text or voice query left for the
//     backend.
//
// reply events
//
//   - ReplyReceived (reply.received): a normalized assistant reply arrived.
//   - ExchangeFailed (reply.failed): the exchange ended in an error; the
//     attempt is terminal and is not retried.
//
// recording events
//
//   - RecordingStarted (recording.started): a capture session began.
//   - RecordingStopped (recording.stopped): the capture session was
//     finalized, successfully or not.
//
// playback events
//
//   - PlaybackReady (playback.ready): a reply carried synthesized speech and
//     a playable handle now occupies the audio slot.
package events
