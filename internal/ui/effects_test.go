/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package ui

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecorderCollectsEffects(t *testing.T) {
	recorder := NewRecorder()
	recorder.ShowNotice(Notice{Text: "saved", Kind: NoticeSuccess})
	recorder.ShowNotice(Notice{Text: "plain", Duration: 3 * time.Second})
	recorder.Navigate(Navigation{URL: "/entity/repository/history/5", Hard: true})
	recorder.Reload()

	result := recorder.Result()
	assert.Len(t, result.Notices, 2)
	assert.Equal(t, NoticeDefault, result.Notices[1].Kind)
	assert.Equal(t, "/entity/repository/history/5", result.Navigations[0].URL)
	assert.True(t, result.Reload)
}

func TestResultJSON(t *testing.T) {
	recorder := NewRecorder()
	recorder.ShowNotice(Notice{Text: "hi", Kind: NoticeWarning, Duration: 6 * time.Second})
	recorder.Navigate(Navigation{URL: "/", Hard: true, Delay: 3 * time.Second})

	encoded, err := json.Marshal(recorder.Result())
	assert.NoError(t, err)
	assert.JSONEq(t, `{
		"notices": [{"text": "hi", "kind": "warning", "durationMs": 6000}],
		"navigations": [{"url": "/", "hard": true, "delayMs": 3000}],
		"reload": false
	}`, string(encoded))

	encoded, err = json.Marshal(NewRecorder().Result())
	assert.NoError(t, err)
	assert.JSONEq(t, `{"notices": [], "navigations": [], "reload": false}`, string(encoded))
}

func TestRecorderConcurrentUse(t *testing.T) {
	recorder := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recorder.ShowNotice(Notice{Text: "x"})
		}()
	}
	wg.Wait()
	assert.Len(t, recorder.Result().Notices, 20)
}

func TestEffectsFromContext(t *testing.T) {
	recorder := NewRecorder()
	ctx := WithEffects(context.Background(), recorder)
	EffectsFromContext(ctx).Reload()
	assert.True(t, recorder.Result().Reload)

	assert.NotPanics(t, func() {
		EffectsFromContext(context.Background()).ShowNotice(Notice{Text: "dropped"})
	})
}
