// Package study runs study sessions for authenticated users.
//
// A Deck binds one catalog to a scheduling engine and a review store
// repository. The Service keeps in-flight sessions in memory, persists the
// review store after every answer and restores the previous snapshot when a
// save fails. Idle sessions are removed by a cron-driven sweeper.
package study
