// Package fetcher defines the data source boundary for email context
// assembly.
//
// Each upstream system is hidden behind a narrow interface: UserSource for
// account and family records, SubscriptionSource for billing state,
// ActivitySource for reading behavior and achievements, EngagementSource for
// product analytics and StorySource for story records and recommendations.
// A Set groups one implementation of each for handoff to the email service.
//
// Static implements every interface with deterministic in-memory records and
// backs tests and template previews. Cached* wrappers add read-through
// caching over any KV store; RedisKV and MemoryKV are the provided stores.
// Cache TTLs follow how volatile each source is: user profiles an hour,
// subscriptions fifteen minutes, activity metrics five.
package fetcher
