/*
Package mindbuffer is a five-minute emotional rescue coach for students.

A session walks through four stages. A short chat collects an ABC record
(adversity, belief, consequence), the coach offers three perspective lenses,
then three micro-actions for the chosen lens, and finally a result card with
the stress drop and a growth value. Finished sessions land in an append-only
archive; a parent zone keeps calm-down statistics and a classified journal.

Content comes from a remote language model (DeepSeek or Gemini) when one is
configured, and from a deterministic seeded generator otherwise. Every remote
failure falls back to the seeded content, so a session never stalls.

# Usage

	coach, err := mindbuffer.New()
	if err != nil {
		log.Fatal(err)
	}
	defer coach.Close(ctx)

	id, f, err := coach.Sessions.Open(ctx, 80)
	if err != nil {
		log.Fatal(err)
	}
	f.Submit(ctx, "I failed the mock exam")
	// ... answer the chat, pick a lens and an action ...
	record, err := coach.Sessions.Complete(ctx, id)

Storage is a plain key-value port with memory, Redis and SQLite adapters;
encryption and secret redaction wrap any of them as middleware.
*/
package mindbuffer
